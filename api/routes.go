package api

import (
	"net/http"
	"strconv"
	"strings"
)

// Route identifies one endpoint: an HTTP method and a URL template with
// ":name" parameters. The same table is used on both sides — the client
// builds URLs from it, the server registers handlers against it.
type Route struct {
	Method string
	Path   string
}

// The full endpoint table.
var (
	AuthLogin    = Route{http.MethodPost, "/api/auth/login"}
	AuthRegister = Route{http.MethodPost, "/api/auth/register"}
	AuthMe       = Route{http.MethodGet, "/api/auth/me"}

	ProductsList = Route{http.MethodGet, "/api/products"}
	ProductsGet  = Route{http.MethodGet, "/api/products/:id"}

	CartList   = Route{http.MethodGet, "/api/cart"}
	CartAdd    = Route{http.MethodPost, "/api/cart"}
	CartUpdate = Route{http.MethodPut, "/api/cart/:id"}
	CartDelete = Route{http.MethodDelete, "/api/cart/:id"}

	OrdersList   = Route{http.MethodGet, "/api/orders"}
	OrdersGet    = Route{http.MethodGet, "/api/orders/:id"}
	OrdersCreate = Route{http.MethodPost, "/api/orders"}
)

// Build substitutes named ":param" segments with literal values for client
// use. Unknown parameters are ignored; unmatched segments are left as-is.
func (r Route) Build(params map[string]string) string {
	url := r.Path
	for key, value := range params {
		url = strings.ReplaceAll(url, ":"+key, value)
	}
	return url
}

// BuildID is a shorthand for the common single ":id" parameter.
func (r Route) BuildID(id int64) string {
	return r.Build(map[string]string{"id": strconv.FormatInt(id, 10)})
}

// Pattern converts the ":name" template to the "{name}" form the chi router
// expects, so the server registers exactly the paths the client builds.
func (r Route) Pattern() string {
	segments := strings.Split(r.Path, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, ":") {
			segments[i] = "{" + seg[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}
