// Package handler provides type-safe HTTP request handling with JSON responses.
//
// A handler is a generic function from a bound request value to a Response:
//
//	func submit(ctx handler.Context, req binder.Payload) handler.Response {
//		if err := process(ctx, req); err != nil {
//			return handler.Message(http.StatusInternalServerError, "Something went wrong.")
//		}
//		return handler.Message(http.StatusOK, "Done.")
//	}
//
//	mux.Handle("/submit", handler.Wrap(submit,
//		handler.WithBinder[handler.Context, binder.Payload](binder.Body()),
//	))
//
// Wrap runs the configured binders, applies decorators (first one outermost),
// calls the handler and renders its Response. Binding and rendering failures
// go to the ErrorHandler; NewErrorHandler logs them and answers with
// {"message": ...}, using the Key of an HTTPError as the client-facing text.
//
// Every JSON response is sent as application/json; charset=utf-8.
package handler
