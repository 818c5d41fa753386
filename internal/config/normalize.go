package config

import (
	"strings"
)

// normalize expands path fields and canonicalizes string settings so the rest
// of the engine never sees tilde paths or mixed-case enumerations.
func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeUploads()
	c.normalizeCodecs()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.PhotosDir, err = expandPath(c.Paths.PhotosDir); err != nil {
		return err
	}
	if c.Paths.VideosDir, err = expandPath(c.Paths.VideosDir); err != nil {
		return err
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	if c.Paths.LockDir, err = expandPath(c.Paths.LockDir); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeUploads() {
	if c.Uploads.ImageMaxBytes <= 0 {
		c.Uploads.ImageMaxBytes = defaultImageMaxBytes
	}
	if c.Uploads.VideoMaxBytes <= 0 {
		c.Uploads.VideoMaxBytes = defaultVideoMaxBytes
	}
}

func (c *Config) normalizeCodecs() {
	c.Codecs.ImageTool = strings.TrimSpace(c.Codecs.ImageTool)
	c.Codecs.VideoTool = strings.TrimSpace(c.Codecs.VideoTool)
	if c.Codecs.TimeoutSeconds <= 0 {
		c.Codecs.TimeoutSeconds = defaultCodecTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if format == "" {
		format = defaultLogFormat
	}
	c.Logging.Format = format

	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level
}
