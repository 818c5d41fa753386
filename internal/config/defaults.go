package config

const (
	defaultPhotosDir           = "~/.local/share/mediastore/photos"
	defaultVideosDir           = "~/.local/share/mediastore/videos"
	defaultDataDir             = "~/.local/share/mediastore/data"
	defaultLogDir              = "~/.local/share/mediastore/logs"
	defaultLockDir             = "~/.local/share/mediastore/locks"
	defaultImageMaxBytes       = 10 << 20  // 10 MiB
	defaultVideoMaxBytes       = 500 << 20 // 500 MiB
	defaultCodecTimeoutSeconds = 120
	defaultImageTool           = "mediastore-imagick"
	defaultVideoTool           = "mediastore-ffprobe"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			PhotosDir: defaultPhotosDir,
			VideosDir: defaultVideosDir,
			DataDir:   defaultDataDir,
			LogDir:    defaultLogDir,
			LockDir:   defaultLockDir,
		},
		Uploads: Uploads{
			ImageMaxBytes: defaultImageMaxBytes,
			VideoMaxBytes: defaultVideoMaxBytes,
		},
		Migration: Migration{
			Checksum: true,
		},
		Codecs: Codecs{
			ImageTool:      defaultImageTool,
			VideoTool:      defaultVideoTool,
			TimeoutSeconds: defaultCodecTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
