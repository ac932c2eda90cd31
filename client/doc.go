// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client is a Go client for the appadel API and the profile sync flow
used by the terminal app.

# Client

Client wraps one call per endpoint. It holds no state besides the base URL;
authenticated calls take an explicit Session:

	c := client.New("http://localhost:4000", nil)
	sess, err := c.Login(ctx, "ana@example.com", "secret123")
	profile, err := c.GetProfile(ctx, sess)

Non-2xx responses are returned as *APIError carrying the status code and the
server's message and field details. 401, 404 and 409 unwrap to
ErrUnauthorized, ErrNotFound and ErrConflict:

	if errors.Is(err, client.ErrNotFound) {
		// first use
	}

# Sync

Sync owns one session and the last saved profile:

	s := client.NewSync(c)
	profile, err := s.SignIn(ctx, email, password)
	profile, err = s.CompleteSurvey(ctx, []int{2, 3, 1, 0, 4})
	profile, err = s.CompleteQuiz(ctx, answers)
	profile, err = s.AddMatch(ctx, match)

Sign-in, registration and Resume load the profile and create a default one
when none exists. Every change is computed locally with package assess and
sent as a sparse PATCH holding only the changed fields. The snapshot is
replaced with the server's response after a successful save and left as it
was on failure. There are no retries.

A 401 from any call clears the session and the snapshot; later calls return
ErrNotSignedIn until the user signs in again.
*/
package client
