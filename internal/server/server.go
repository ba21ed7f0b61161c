package server

// Ops-API для операторских панелей. Сервер объединяет специфичные
// HTTP сервера по сущностям.
type Server struct {
	DealServer
	UserServer
}

func NewServer(
	dealServer DealServer,
	userServer UserServer,
) Server {
	return Server{
		DealServer: dealServer,
		UserServer: userServer,
	}
}
