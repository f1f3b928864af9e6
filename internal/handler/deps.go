package handler

import (
	"taskboard/internal/app/board"
	"taskboard/internal/configs"
)

type AppDeps struct {
	Engine *board.Engine
	Config *configs.AppConfig
}
