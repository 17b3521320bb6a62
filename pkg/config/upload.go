package config

type UploadConfig struct {
	AllowedMimeTypes []string
	MaxSizeMB        int64
}

// UploadContexts хранит лимиты для каждого вида загружаемых файлов.
var UploadContexts = map[string]UploadConfig{
	"ingredient_import": {
		// xlsx - это zip, некоторые клиенты шлют его без типа
		AllowedMimeTypes: []string{"application/zip", "application/octet-stream"},
		MaxSizeMB:        10,
	},
}
