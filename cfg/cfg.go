package cfg

import (
	"app/db"
	"app/internal/app/api"
	"app/pkg/tools"
	"app/pkg/translator"
	"app/pkg/tts"
)

type Config struct {
	Api api.Config `yaml:"api"`

	TTS        tts.ServiceConfig `yaml:"tts"`
	Translator translator.Config `yaml:"translator"`

	DB db.Config `yaml:"db"`

	AudioTTL tools.Duration `yaml:"audio_ttl"`
}
