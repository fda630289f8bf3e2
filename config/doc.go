// Package config loads binder configuration with Viper.
//
// Values come from, in increasing precedence: a YAML file, a .env file
// (loaded into the process environment with godotenv) and environment
// variables. Environment variables are matched by prefix: with the
// default prefix RESTBIND, RESTBIND_BASE_URI sets base_uri and
// RESTBIND_TRANSPORT_TIMEOUT sets transport.timeout.
//
//	var cfg binder.Config
//	if err := config.Load("restbind", &cfg); err != nil {
//	    return err
//	}
package config
