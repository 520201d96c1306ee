package contextkeys

// Custom type avoids collisions with other context keys.
type contextKey string

// DBContextKey is the key under which the *gorm.DB (pool or test
// transaction) travels through the request context.
const DBContextKey = contextKey("db")
