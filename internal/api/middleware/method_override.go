package middleware

import (
	"net/http"
	"strings"
)

// MethodOverride 让 HTML 表单以 POST 携带 _method 访问 PUT/DELETE 路由,
// 需包在 gin 引擎外层, 路由匹配前生效
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			method := r.Header.Get("X-HTTP-Method-Override")
			if method == "" {
				method = r.URL.Query().Get("_method")
			}
			switch strings.ToUpper(method) {
			case http.MethodPut:
				r.Method = http.MethodPut
			case http.MethodDelete:
				r.Method = http.MethodDelete
			}
		}
		next.ServeHTTP(w, r)
	})
}
