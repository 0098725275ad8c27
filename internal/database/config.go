package database

type Config struct {
	// Path to the bbolt file holding the local client state
	FilePath string `envconfig:"ACHIEVEMENTS_DB_FILE_PATH" default:"achievements.db"`
}
