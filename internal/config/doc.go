// Package config provides configuration management for the demo service.
//
// Configuration is loaded from environment variables using the env package.
// Defaults match the container image: HTTP on 8080 and a five second
// startup window before /ready reports READY.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("HTTP server will listen on %s\n", cfg.GetHTTPAddr())
package config
