package itemdata

import (
	"context"
	"sync"
)

// Result pairs one requested item with either its detail or its error.
// Batch fetches never fail as a whole; each line degrades independently.
type Result struct {
	ProductID int64
	Detail    *ItemDetail
	Err       error
}

// FetchAll queries item details concurrently, one request per product, and
// joins the results in input order. A failed fetch only marks its own slot.
func FetchAll(ctx context.Context, client Client, productIDs []int64) []Result {
	results := make([]Result, len(productIDs))

	var wg sync.WaitGroup
	for i, id := range productIDs {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			detail, err := client.Fetch(ctx, id)
			results[i] = Result{ProductID: id, Detail: detail, Err: err}
		}(i, id)
	}
	wg.Wait()

	return results
}
