/*
Package clients provides a Go client for the inventor registry HTTP API.

RegistryClient mirrors the registry operations over HTTP. State-mutating calls
return the registry.Result decoded from the server, so a caller sees exactly the
codes the registry produced (1, 403, 404). Transport failures and unexpected
responses are returned as errors.

# Example Usage

	client := clients.NewRegistryClient("http://localhost:8080", admin)

	res, err := client.VerifyInventor(ctx, inventor)
	if err != nil {
	    return err
	}
	if !res.IsOk() {
	    fmt.Println("rejected with", res.Code())
	}
*/
package clients
