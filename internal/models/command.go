package models

import "encoding/json"

// CommandMessage - входящая команда: имя события, контекст документа и данные события.
type CommandMessage struct {
	ID      string          `json:"id" validate:"required"`
	Command string          `json:"command" validate:"required"`
	Context EventContext    `json:"context"`
	Data    json.RawMessage `json:"data"`
}

// CommandResponse - ответ на обработанную команду.
type CommandResponse struct {
	ID   string           `json:"id"`
	Data *Acknowledgement `json:"data"`
}
