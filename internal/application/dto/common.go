package dto

// Envelope respuesta uniforme de la API: {success, message?, data?}.
// Todos los handlers responden con esta forma, tanto en éxito como en error.
type Envelope struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// OK construye un Envelope de éxito con datos.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// OKMessage construye un Envelope de éxito solo con mensaje (deletes).
func OKMessage(message string) Envelope {
	return Envelope{Success: true, Message: message}
}

// Fail construye un Envelope de error con código y mensaje.
func Fail(code, message string) Envelope {
	return Envelope{Success: false, Code: code, Message: message}
}

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}
