// Package config loads refstore.json, the server configuration file.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "localhost",
//	    "port": 8080,
//	    "title": "refstore",
//	    "wsPath": "/ws",
//	    "maxSessions": 1000,
//	    "debug": false
//	  },
//	  "session": {
//	    "readTimeout": "60s",
//	    "writeTimeout": "10s",
//	    "idleTimeout": "5m",
//	    "maxMessageSize": 65536,
//	    "maxRenderPasses": 10
//	  }
//	}
//
// Environment variables override the file: REFSTORE_ADDR replaces
// host and port, REFSTORE_DEBUG enables debug mode.
//
// # Usage
//
//	cfg, err := config.LoadOptional(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg.ApplyEnv(os.Getenv)
//	srv := server.New(loginpage.App, cfg.ServerConfig())
package config
