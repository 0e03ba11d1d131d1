// Package plex provides a client for the Plex Media Server and plex.tv web APIs.
//
// Every API operation maps onto exactly one HTTP call. A call is described by
// a Request, decorated with the identification headers Plex expects, executed
// by a Transport and decoded into a caller-chosen result type from JSON or XML.
//
// # Architecture
//
//   - Request: an in-memory description of one outbound call
//   - HeaderComposer: adds the X-Plex-* identification headers and the token
//   - Transport: sends a Request and decodes the body into a typed result
//   - Client: the API facade (sign-in, library sections, libraries, images)
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := plex.NewClient("http://plex.local:32400", logger,
//		plex.WithTimeout(15*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	auth, err := client.SignIn(ctx, plex.Credentials{Login: "user", Password: "secret"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sections, err := client.GetLibrarySections(ctx, auth.Token())
//
// # Error Handling
//
// Calls fail with one of:
//
//   - *TransportError: the request could not be sent, or the server answered
//     with a non-2xx status (then it wraps an *APIError)
//   - *DecodeError: the body could not be decoded into the result type
//   - *CancelledError: the context was cancelled or its deadline passed
//
// Use errors.As to tell them apart:
//
//	var apiErr *plex.APIError
//	if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
//		// sign in again
//	}
package plex
