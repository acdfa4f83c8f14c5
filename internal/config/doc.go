// Package config manages user-level settings stored at ~/.fabricgen/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the template repository URL and the default mod author.
package config
