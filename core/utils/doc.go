// Package utils provides small conversion helpers shared by the seed parser and the CLI.
package utils
