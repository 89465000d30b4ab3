/*
Package casdoorsdk provides a client SDK for the Casdoor identity and
authorization service.

# Overview

A Client is bound to one Casdoor application. It exposes one method per REST
endpoint under {endpoint}/api: CRUD over users, applications, organizations,
roles, permissions, policies, tokens and the other entity kinds, plus
enforcement, OAuth token flows and JWT parsing.

	client, err := casdoorsdk.New(casdoorsdk.Config{
		Endpoint:         "https://door.example.com",
		ClientID:         "client-id",
		ClientSecret:     "client-secret",
		Certificate:      certPEM,
		OrganizationName: "built-in",
		ApplicationName:  "app-built-in",
	})
	if err != nil {
		log.Fatal(err)
	}

	roles, err := client.GetRoles(ctx)

# Owners and IDs

Entities are addressed as "{owner}/{name}". The owner is the configured
organization, except for applications and tokens which always belong to
"admin". Mutations submit a copy of the entity with its owner replaced; the
caller's value is not modified:

	role := &casdoorsdk.Role{Owner: "ignored", Name: "editors"}
	ok, err := client.AddRole(ctx, role) // submitted owner is "built-in"

Get methods return (nil, nil) when the entity doesn't exist.

# Results and Errors

Add, Update and Delete methods return (true, nil) only when the service
reports the change as applied. A rejected change that the service doesn't
treat as an error returns (false, nil).

Errors are inspectable with errors.Is and errors.As:

  - ErrNotInitialized: the method was called on a nil or zero Client
  - ErrInvalidConfig: Config.Validate or New rejected the configuration
  - *HTTPError: the service answered with a non-2xx status
  - *APIError: the service answered {"status": "error", "msg": ...}
  - *OAuth2Error: a token endpoint rejected the grant

Requests are never retried.

# Authentication

By default every request carries HTTP Basic credentials built from the client
id and secret. WithAuthMode(AuthBearer) together with WithBearerToken, or
Client.WithBearer, uses an OAuth access token instead:

	tok, err := client.GetClientCredentialsToken(ctx)
	if err != nil {
		return err
	}
	bearer, err := client.WithBearer(tok.AccessToken)

AuthQuery sends clientId and clientSecret as query parameters, for old
deployments only.

# Compatibility

Older Casdoor releases wrapped responses and request bodies differently.
WithEnvelope selects the response shape and WithPayloadStyle the request
shape (PayloadInfoWrapped sends {"<kind>Info": "<json>"}).

# Sign-in

SignInURL and SignUpURL build the browser redirect URLs; they do no I/O.
GetOAuthToken exchanges the returned code and ParseJwtToken verifies the
access token against Config.Certificate:

	pkce, _ := casdoorsdk.NewPKCE()
	state, _ := casdoorsdk.NewState()
	http.Redirect(w, r, client.SignInURLWithPKCE(callback, state, pkce), http.StatusFound)

	// in the callback handler
	tok, err := client.GetOAuthTokenWithVerifier(ctx, code, pkce.Verifier)
	claims, err := client.ParseJwtToken(tok.AccessToken)
	fmt.Println(claims.Owner, claims.Name)

# Thread Safety

A Client is immutable after New and safe for concurrent use. Every method
takes a context; cancelling it aborts that request only.
*/
package casdoorsdk
