package upload

import "time"

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

type Config struct {
	Storage string `env:"UPLOAD_STORAGE" envDefault:"local"` // local | s3
	Dir     string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	// URLPrefix is the path local uploads are served under.
	URLPrefix string `env:"UPLOAD_URL_PREFIX" envDefault:"/uploads/"`
	// BasePath is prepended to local upload URLs when the service runs below
	// a path on its host, e.g. "/servers/chefmaster_db".
	BasePath string `env:"UPLOAD_BASE_PATH" envDefault:""`
	MaxSize  int64  `env:"UPLOAD_MAX_SIZE" envDefault:"5242880"`
	// SaveTimeout bounds writing one local upload. Zero disables it.
	SaveTimeout time.Duration `env:"UPLOAD_SAVE_TIMEOUT" envDefault:"30s"`
}
