package sqlite

// Schema DDL. Every statement is idempotent so Attach can run it on each
// process start against an existing database.
const (
	createTodos = `CREATE TABLE IF NOT EXISTS todos (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL UNIQUE CHECK (length(title) > 0),
    completed BOOLEAN NOT NULL DEFAULT 0
);`
)

// schemaDDL lists all CREATE statements in dependency order.
var schemaDDL = []string{
	createTodos,
}

// Item queries.
const (
	sqlListItems  = `SELECT id, title, completed FROM todos ORDER BY id ASC`
	sqlCountItems = `SELECT COUNT(*) FROM todos`
	sqlInsertItem = `INSERT INTO todos (title, completed) VALUES (?, 0)`
	sqlUpdateItem = `UPDATE todos SET title = ?, completed = COALESCE(?, completed) WHERE id = ?`
	sqlDeleteItem = `DELETE FROM todos WHERE id = ?`
)
