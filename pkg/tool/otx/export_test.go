package otx

import "net/http"

func (x *Action) SetHTTPClient(client *http.Client) {
	x.httpClient = client
}
