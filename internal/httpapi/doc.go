// Package httpapi exposes the form pipeline over HTTP.
//
// POST /contact and POST /application (also under /api/forms) accept
// urlencoded, multipart or JSON bodies and answer with a JSON message:
//
//	{"message": "Your message has been sent successfully."}
//	{"errors": {"email": "Invalid email format."}}
//
// Unknown paths and methods get 404 {"message": "Page not found."}.
package httpapi
