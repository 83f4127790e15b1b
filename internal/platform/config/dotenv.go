package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// DotEnvPath は既定の .env ファイルのパスです。
const DotEnvPath = ".env"

// LoadDotEnv は .env を環境変数へ読み込みます。既存の環境変数は上書きしません。
// ファイルが存在しない場合は何もせず、構文エラーなどはそのまま返します。
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// RequirePostgres は storage.driver が postgres でなければエラーを返します。
func (c *Config) RequirePostgres() error {
	if c.Storage.Driver != StoragePostgres {
		return fmt.Errorf("config: storage.driver is %q, set storage.driver: postgres (e.g. assets/postgres.yaml) to run migrations", c.Storage.Driver)
	}
	return nil
}
