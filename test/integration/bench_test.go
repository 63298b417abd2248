package integration

import (
	"net/http"
	"testing"
)

// Benchmark for GET /inventory/search; to run: go test -bench=. ./test/integration -run ^$
func BenchmarkSearch(b *testing.B) {
	waitReady(b)
	u := baseURL()
	client := &http.Client{}
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			resp, err := client.Get(u + "/inventory/search?q=milk")
			if err == nil {
				_ = resp.Body.Close()
			}
		}
	})
}
