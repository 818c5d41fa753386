package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateUploads(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.PhotosDir == "" {
		return errors.New("paths.photos_dir must be set")
	}
	if c.Paths.VideosDir == "" {
		return errors.New("paths.videos_dir must be set")
	}
	if c.Paths.PhotosDir == c.Paths.VideosDir {
		return errors.New("paths.photos_dir and paths.videos_dir must be distinct roots")
	}
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateUploads() error {
	if c.Uploads.ImageMaxBytes > c.Uploads.VideoMaxBytes {
		return fmt.Errorf("uploads.image_max_bytes (%d) must not exceed uploads.video_max_bytes (%d)",
			c.Uploads.ImageMaxBytes, c.Uploads.VideoMaxBytes)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}
