// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	if err := cliparse.LoadEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: database connection string (required)
  - DatabaseType: sqlite (default) or postgres
  - SettingsPath: optional YAML file with event settings
  - Settings: the loaded event settings, defaults when no file is given

# CLI Flags

	-p          Server port
	-d          Database URL
	-t          Database type
	-settings   Event settings file

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	EVENT_SETTINGS → -settings

CLI flags take precedence over environment variables, and variables already
present in the environment take precedence over a .env file read by LoadEnv.

# Event Settings

	default_num_pods: 2    # pods per round when an event does not say
	max_rounds: 7          # rounds an event may pair
	round_ranks: 4         # places per pod ranking
	min_participants: 3    # smallest event that may be created
	points:
	  play_phase:        {1: 4, 2: 3, 3: 2, 4: 1}
	  best_deck_voting:  {1: 3, 2: 2, 3: 1}
	  best_deck_overall: {1: 8, 2: 5, 3: 3, 4: 2, 5: 1}

Omitted keys keep their defaults. Invalid values are reported by
ParseFlags.
*/
package cliparse
