// Package config loads the application configuration: struct defaults,
// then an optional YAML file, then TSENGINE_-prefixed environment
// variables, each layer overriding the previous one.
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Database    Database    `koanf:"db"`
	Inputs      Inputs      `koanf:"inputs"`
	Outputs     Outputs     `koanf:"outputs"`
	Cost        Cost        `koanf:"cost"`
	Utilization Utilization `koanf:"utilization"`
	Server      Server      `koanf:"server"`
}

type Database struct {
	// Path is the SQLite database file; ":memory:" for ephemeral runs.
	Path string `koanf:"path"`
}

type Inputs struct {
	WorkHours string `koanf:"workhours"`
	TimeOff   string `koanf:"timeoff"`
}

type Outputs struct {
	Dir         string `koanf:"dir"`
	Utilization string `koanf:"utilization"`
	Cost        string `koanf:"cost"`
}

type Cost struct {
	// HourlyRate is the flat cost of one worked hour.
	HourlyRate float64 `koanf:"hourlyrate"`
}

type Utilization struct {
	HoursPerDay int `koanf:"hoursperday"`
	// DefaultFullCapacity grants full-month capacity to employees with no
	// time-off history instead of dropping them from the report.
	DefaultFullCapacity bool `koanf:"defaultfullcapacity"`
}

type Server struct {
	Port int `koanf:"port"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Database: Database{
			Path: "timesheet.db",
		},
		Inputs: Inputs{
			WorkHours: "csv_sources/work_hours.csv",
			TimeOff:   "csv_sources/time_off.csv",
		},
		Outputs: Outputs{
			Dir:         "output_files",
			Utilization: "project_utilization.csv",
			Cost:        "accumulated_actual_costs.csv",
		},
		Cost: Cost{
			HourlyRate: 100,
		},
		Utilization: Utilization{
			HoursPerDay: 8,
		},
		Server: Server{
			Port: 8080,
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.ProviderWithValue("TSENGINE_", ".", func(k, v string) (string, interface{}) {
		k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "TSENGINE_")), "_", ".")
		return k, v
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
