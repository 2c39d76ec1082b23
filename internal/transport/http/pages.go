package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// resetPageHTML backs the emailed link (/reset-password?token=...) and the
// code path (email + code, then new password).
var resetPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8" />
<meta name="viewport" content="width=device-width, initial-scale=1.0" />
<title>Glamouré · Reset password</title>
<style>
body { font-family: Georgia, serif; margin: 0; background: linear-gradient(135deg,#f6d5e5,#c9a7eb); color: #2d2330; min-height: 100vh; display: flex; align-items: center; justify-content: center; }
.card { background: #fff; padding: 28px; border-radius: 10px; width: 90%; max-width: 420px; box-shadow: 0 10px 40px rgba(0,0,0,0.15); }
input { width: 100%; box-sizing: border-box; padding: 10px; margin: 8px 0; border: 1px solid #ccc; border-radius: 4px; }
button { width: 100%; padding: 12px; font-size: 16px; border: none; border-radius: 4px; cursor: pointer; background: #7b3f8c; color: #fff; }
.hidden { display: none; }
#status { margin-top: 12px; min-height: 1.2em; }
</style>
</head>
<body>
<div class="card">
  <h1>Reset password</h1>
  <form id="verifyForm">
    <p>Enter the 6 digit code from your email.</p>
    <input id="email" type="email" placeholder="Email" required />
    <input id="otp" inputmode="numeric" maxlength="6" placeholder="Code" required />
    <button type="submit">Verify code</button>
  </form>
  <form id="resetForm" class="hidden">
    <input id="password" type="password" minlength="6" maxlength="72" placeholder="New password" required />
    <button type="submit">Set new password</button>
  </form>
  <p id="status"></p>
</div>
<script>
const status = document.getElementById('status');
const verifyForm = document.getElementById('verifyForm');
const resetForm = document.getElementById('resetForm');
let resetToken = new URLSearchParams(window.location.search).get('token');

function showReset() {
  verifyForm.classList.add('hidden');
  resetForm.classList.remove('hidden');
}
if (resetToken) { showReset(); }

async function post(path, body) {
  const response = await fetch(path, {
    method: 'POST',
    headers: { 'Content-Type': 'application/json' },
    body: JSON.stringify(body),
  });
  const data = await response.json().catch(() => ({}));
  if (!response.ok) { throw new Error(data.error || 'Request failed'); }
  return data;
}

verifyForm.addEventListener('submit', async (event) => {
  event.preventDefault();
  try {
    const data = await post('/api/auth/verify-otp', {
      email: document.getElementById('email').value,
      otp: document.getElementById('otp').value,
    });
    resetToken = data.temp_token;
    status.textContent = '';
    showReset();
  } catch (err) {
    status.textContent = err.message;
  }
});

resetForm.addEventListener('submit', async (event) => {
  event.preventDefault();
  try {
    const data = await post('/api/auth/reset-password', {
      token: resetToken,
      new_password: document.getElementById('password').value,
    });
    resetForm.classList.add('hidden');
    status.textContent = data.message;
  } catch (err) {
    status.textContent = err.message;
  }
});
</script>
</body>
</html>`

func RegisterPages(e *echo.Echo) {
	e.GET("/reset-password", func(c echo.Context) error {
		c.Response().Header().Set("Cache-Control", "no-store")
		c.Response().Header().Set("Referrer-Policy", "no-referrer")
		return c.HTML(http.StatusOK, resetPageHTML)
	})
}
