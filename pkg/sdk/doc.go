// Package parksite provides a Go client for the parksite HTTP API.
//
//	client, _ := parksite.New("https://www.parquedesaltos.mx",
//	    parksite.WithTimeout(3*time.Second),
//	)
//	results, _ := client.Search(ctx, "cumple")
//	page, _ := client.ListPosts(ctx, 1, 9)
//	post, err := client.GetPost(ctx, "consejos-de-seguridad")
//	if errors.Is(err, parksite.ErrNotFound) {
//	    // ...
//	}
package parksite
