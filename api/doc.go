/*
Package api defines the HTTP contract of the inventor registry server.

It contains the request and response types shared by the server (package
httpserver) and the Go client (package api/clients), the header carrying the
caller identity, and the HTTP server configuration.

# Endpoints

	POST /api/inventors                         register the caller
	POST /api/inventors/{identity}/verify       admin verifies an inventor
	GET  /api/inventors/{identity}              inventor record
	GET  /api/inventors/{identity}/registered   {"value": bool}
	GET  /api/inventors/{identity}/verified     {"value": bool}
	GET  /api/admin                             current admin
	POST /api/admin/transfer                    admin hands over the role

# Caller identity

State-mutating endpoints read the caller from the X-Caller-Identity header. The
server trusts this header: it is meant to be set by an authenticating proxy in
front of the registry.

# Results

State-mutating endpoints answer with a registry.Result body:

	{"type":"ok","value":true}
	{"type":"err","value":1}     duplicate registration (HTTP 409)
	{"type":"err","value":403}   caller is not the admin (HTTP 403)
	{"type":"err","value":404}   no such inventor (HTTP 404)
*/
package api
