package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// minimal landing page for the access gate; the real UI lives in the
// frontend, this keeps redirected visitors on a working form
const loginPage = `<!DOCTYPE html>
<html>
<head><title>Imagica</title></head>
<body>
<form id="login">
  <input type="password" name="password" placeholder="Site password" autofocus>
  <button type="submit">Enter</button>
  <p id="status"></p>
</form>
<script>
document.getElementById("login").addEventListener("submit", async (e) => {
  e.preventDefault();
  const resp = await fetch("/api/v1/session", {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify({password: e.target.password.value}),
  });
  if (resp.ok) {
    window.location = "/";
  } else {
    document.getElementById("status").textContent = "Invalid password";
  }
});
</script>
</body>
</html>`

// serves the gate landing page
func LoginPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(loginPage))
	}
}
