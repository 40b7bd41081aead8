package httpapi

import (
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

// Stats counts requests per method and route template, e.g.
// "GET /models/{id}".
type Stats struct {
	mu       sync.Mutex
	counts   map[string]int
	requests *prometheus.CounterVec
}

func newStats(reg prometheus.Registerer) *Stats {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "catalog",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "API requests by method and route.",
	}, []string{"method", "route"})
	reg.MustRegister(requests)

	return &Stats{counts: make(map[string]int), requests: requests}
}

func (st *Stats) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		st.add(r.Method, route)
		next.ServeHTTP(w, r)
	})
}

func (st *Stats) add(method, route string) {
	st.mu.Lock()
	st.counts[method+" "+route]++
	st.mu.Unlock()
	st.requests.WithLabelValues(method, route).Inc()
}

// Count returns how many requests hit route with method.
func (st *Stats) Count(method, route string) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.counts[method+" "+route]
}

// Total returns the number of requests served so far.
func (st *Stats) Total() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for _, c := range st.counts {
		n += c
	}
	return n
}

// Reset clears the counters kept for Count and Total.
func (st *Stats) Reset() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.counts = make(map[string]int)
}
