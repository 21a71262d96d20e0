package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by anything that can mount itself on a router.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
