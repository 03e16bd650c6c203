// Package config loads the ambient settings of decimal expression engines.
//
// Configuration is read from environment variables and validated on load.
// Every option has a default, so an empty environment yields a usable config.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg)
package config
