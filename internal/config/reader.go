package config

import "github.com/ilyakaznacheev/cleanenv"

type Reader interface {
	Read() (*Config, error)
}

type EnvReader struct{}

func NewEnvReader() EnvReader {
	return EnvReader{}
}

func (EnvReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// FileReader reads the config from a .env file at Path.
type FileReader struct {
	Path string
}

func NewFileReader(path string) FileReader {
	return FileReader{Path: path}
}

func (r FileReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadConfig(r.Path, cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
