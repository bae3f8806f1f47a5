package upload

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/formintake/pkg/config"
	"github.com/dmitrymomot/formintake/pkg/file"
)

// NewStorage builds the backend selected by cfg.Storage. The S3 settings are
// only loaded from the environment when S3 is selected.
func NewStorage(ctx context.Context, cfg Config) (file.Storage, error) {
	switch cfg.Storage {
	case StorageLocal, "":
		s, err := file.NewLocalStorage(cfg.Dir, cfg.URLPrefix, file.WithLocalUploadTimeout(cfg.SaveTimeout))
		if err != nil {
			return nil, err
		}
		return s, nil
	case StorageS3:
		var s3Cfg file.S3Config
		if err := config.Load(&s3Cfg); err != nil {
			return nil, err
		}
		s, err := file.NewS3Storage(ctx, s3Cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: unknown upload storage %q", file.ErrInvalidConfig, cfg.Storage)
	}
}
