// Package config loads the teamboard configuration.
//
// Values come from environment variables, optionally preloaded from a .env file.
// Every leaf field carries a mapstructure key and a default tag; nested keys map
// to upper-case variables joined by underscores, so database.driver is read from
// DATABASE_DRIVER and view.sort from VIEW_SORT.
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
