package common

// SessionCookieName is the HTTP cookie that carries the session token.
const SessionCookieName = "token"

// LoginMethodEmail is the method recorded in login_logs for
// email/password sign-ins.
const LoginMethodEmail = "email"
