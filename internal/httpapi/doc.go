// Package httpapi exposes the engine operations over HTTP/JSON with chi.
//
// Identity is taken from the X-Requester-ID header, set by whatever
// authenticates callers in front of this service. Every response uses one
// envelope:
//
//	{"status":"ok","data":{...}}
//	{"status":"error","error":{"code":"WRONG_STATE","message":"..."}}
//
// Domain error codes map to HTTP statuses in StatusFor.
package httpapi
