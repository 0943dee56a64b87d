package lineage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/glot/pkg/dialect"
	"github.com/leapstack-labs/glot/pkg/parser"

	_ "github.com/leapstack-labs/glot/pkg/dialects/duckdb"
)

func extract(t *testing.T, sql string, schema Schema) *ModelLineage {
	t.Helper()
	lineage, err := ExtractLineage(sql, schema)
	require.NoError(t, err)
	return lineage
}

// findColumn returns the lineage of the named output column.
func findColumn(t *testing.T, cols []*ColumnLineage, name string) *ColumnLineage {
	t.Helper()
	for _, c := range cols {
		if c.Name == name {
			return c
		}
	}
	require.Failf(t, "missing column", "no output column %q", name)
	return nil
}

// ---------- Simple SELECT Tests ----------

func TestExtractLineage_SimpleSelect(t *testing.T) {
	lineage := extract(t, `SELECT id, name, email FROM users`, nil)

	assert.Equal(t, []string{"users"}, lineage.Sources)
	require.Len(t, lineage.Columns, 3)
	for _, name := range []string{"id", "name", "email"} {
		col := findColumn(t, lineage.Columns, name)
		assert.Equal(t, TransformDirect, col.Transform)
		assert.Equal(t, []SourceColumn{{Table: "users", Column: name}}, col.Sources)
	}
}

func TestExtractLineage_QualifiedColumns(t *testing.T) {
	lineage := extract(t, `SELECT u.id, u.name FROM users u`, nil)

	assert.Equal(t, []string{"users"}, lineage.Sources)
	col := findColumn(t, lineage.Columns, "id")
	assert.Equal(t, []SourceColumn{{Table: "users", Column: "id"}}, col.Sources)
}

// ---------- Expression Tests ----------

func TestExtractLineage_Expressions(t *testing.T) {
	tests := []struct {
		name      string
		sql       string
		column    string
		transform TransformType
		function  string
		sources   []SourceColumn
	}{
		{
			name:      "binary expression",
			sql:       `SELECT price * quantity AS total FROM order_items`,
			column:    "total",
			transform: TransformExpression,
			sources:   []SourceColumn{{"order_items", "price"}, {"order_items", "quantity"}},
		},
		{
			name:      "single column function is direct",
			sql:       `SELECT UPPER(name) AS upper_name FROM users`,
			column:    "upper_name",
			transform: TransformDirect,
			sources:   []SourceColumn{{"users", "name"}},
		},
		{
			name:      "coalesce of two columns",
			sql:       `SELECT COALESCE(nickname, name) AS display_name FROM users`,
			column:    "display_name",
			transform: TransformExpression,
			sources:   []SourceColumn{{"users", "nickname"}, {"users", "name"}},
		},
		{
			name:      "cast",
			sql:       `SELECT CAST(id AS VARCHAR) AS id_str FROM users`,
			column:    "id_str",
			transform: TransformExpression,
			sources:   []SourceColumn{{"users", "id"}},
		},
		{
			name:      "unaliased function takes its name",
			sql:       `SELECT LOWER(email) FROM users`,
			column:    "lower",
			transform: TransformDirect,
			sources:   []SourceColumn{{"users", "email"}},
		},
		{
			name:      "parenthesized column",
			sql:       `SELECT (id) FROM users`,
			column:    "id",
			transform: TransformDirect,
			sources:   []SourceColumn{{"users", "id"}},
		},
		{
			name:      "case",
			sql:       `SELECT CASE WHEN status = 'active' THEN 'Active' ELSE 'Unknown' END AS status_label FROM users`,
			column:    "status_label",
			transform: TransformExpression,
			sources:   []SourceColumn{{"users", "status"}},
		},
		{
			name:      "string literal",
			sql:       `SELECT id, 'constant' AS label FROM users`,
			column:    "label",
			transform: TransformExpression,
		},
		{
			name:      "unnamed expression",
			sql:       `SELECT id, 1 + 1 FROM users`,
			column:    "column1",
			transform: TransformExpression,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lineage := extract(t, tt.sql, nil)
			col := findColumn(t, lineage.Columns, tt.column)
			assert.Equal(t, tt.transform, col.Transform)
			assert.Equal(t, tt.function, col.Function)
			assert.Equal(t, tt.sources, col.Sources)
		})
	}
}

// ---------- Aggregate and Window Tests ----------

func TestExtractLineage_Aggregates(t *testing.T) {
	tests := []struct {
		sql      string
		column   string
		function string
	}{
		{`SELECT customer_id, COUNT(*) AS order_count FROM orders GROUP BY customer_id`, "order_count", "count"},
		{`SELECT customer_id, SUM(amount) AS total_amount FROM orders GROUP BY customer_id`, "total_amount", "sum"},
		{`SELECT product_id, AVG(price) AS avg_price FROM products GROUP BY product_id`, "avg_price", "avg"},
	}

	for _, tt := range tests {
		t.Run(tt.function, func(t *testing.T) {
			lineage := extract(t, tt.sql, nil)

			key := lineage.Columns[0]
			assert.Equal(t, TransformDirect, key.Transform)

			col := findColumn(t, lineage.Columns, tt.column)
			assert.Equal(t, TransformExpression, col.Transform)
			assert.Equal(t, tt.function, col.Function)
		})
	}
}

func TestExtractLineage_WindowFunction(t *testing.T) {
	lineage := extract(t, `SELECT
		id,
		amount,
		SUM(amount) OVER (PARTITION BY customer_id ORDER BY created_at) AS running_total
	FROM orders`, nil)

	assert.Equal(t, TransformDirect, findColumn(t, lineage.Columns, "id").Transform)

	running := findColumn(t, lineage.Columns, "running_total")
	assert.Equal(t, TransformExpression, running.Transform)
	assert.Equal(t, "sum", running.Function)
	assert.ElementsMatch(t, []SourceColumn{
		{"orders", "amount"},
		{"orders", "customer_id"},
		{"orders", "created_at"},
	}, running.Sources)
}

func TestExtractLineage_ROW_NUMBER(t *testing.T) {
	lineage := extract(t, `SELECT id, ROW_NUMBER() OVER (ORDER BY created_at) AS row_num FROM users`, nil)

	col := findColumn(t, lineage.Columns, "row_num")
	assert.Equal(t, TransformExpression, col.Transform)
	assert.Equal(t, "row_number", col.Function)
	assert.Equal(t, []SourceColumn{{"users", "created_at"}}, col.Sources)
}

func TestExtractLineage_ColumnFreeFunctions(t *testing.T) {
	lineage := extract(t, `SELECT id, NOW() AS current_time, RANDOM() AS rand_val FROM users`, nil)

	for _, name := range []string{"current_time", "rand_val"} {
		col := findColumn(t, lineage.Columns, name)
		assert.Empty(t, col.Sources)
		assert.Equal(t, TransformExpression, col.Transform)
		assert.NotEmpty(t, col.Function)
	}
}

// ---------- CTE Tests ----------

func TestExtractLineage_SimpleCTE(t *testing.T) {
	lineage := extract(t, `
	WITH active_users AS (
		SELECT id, name FROM users WHERE status = 'active'
	)
	SELECT id, name FROM active_users`, nil)

	assert.Equal(t, []string{"users"}, lineage.Sources)
	require.Len(t, lineage.Columns, 2)
	assert.Equal(t, []SourceColumn{{"users", "id"}}, lineage.Columns[0].Sources)
}

func TestExtractLineage_MultipleCTEs(t *testing.T) {
	lineage := extract(t, `
	WITH
		customers AS (
			SELECT id, name FROM users WHERE type = 'customer'
		),
		orders_summary AS (
			SELECT customer_id, SUM(amount) AS total FROM orders GROUP BY customer_id
		)
	SELECT c.name, o.total
	FROM customers c
	JOIN orders_summary o ON c.id = o.customer_id`, nil)

	assert.Equal(t, []string{"orders", "users"}, lineage.Sources)

	total := findColumn(t, lineage.Columns, "total")
	assert.Equal(t, TransformExpression, total.Transform)
	assert.Equal(t, "sum", total.Function)
	assert.Equal(t, []SourceColumn{{"orders", "amount"}}, total.Sources)
}

func TestExtractLineage_CTEReferencesEarlierCTE(t *testing.T) {
	lineage := extract(t, `
	WITH a AS (SELECT id FROM users), b AS (SELECT id FROM a)
	SELECT id FROM b`, nil)

	assert.Equal(t, []string{"users"}, lineage.Sources)
	assert.Equal(t, []SourceColumn{{"users", "id"}}, lineage.Columns[0].Sources)
}

func TestExtractLineage_CTEColumnList(t *testing.T) {
	lineage := extract(t, `
	WITH totals(day, total) AS (
		SELECT created_at, SUM(amount) FROM transactions GROUP BY created_at
	)
	SELECT day, total FROM totals`, nil)

	assert.Equal(t, []SourceColumn{{"transactions", "created_at"}},
		findColumn(t, lineage.Columns, "day").Sources)
	assert.Equal(t, "sum", findColumn(t, lineage.Columns, "total").Function)
}

// ---------- Join Tests ----------

func TestExtractLineage_InnerJoin(t *testing.T) {
	lineage := extract(t, `
	SELECT u.name, o.amount
	FROM users u
	INNER JOIN orders o ON u.id = o.user_id`, nil)

	assert.Equal(t, []string{"orders", "users"}, lineage.Sources)
	assert.Equal(t, []SourceColumn{{"users", "name"}}, findColumn(t, lineage.Columns, "name").Sources)
	assert.Equal(t, []SourceColumn{{"orders", "amount"}}, findColumn(t, lineage.Columns, "amount").Sources)
}

func TestExtractLineage_LeftJoin(t *testing.T) {
	lineage := extract(t, `
	SELECT c.name, COALESCE(SUM(o.amount), 0) AS total_orders
	FROM customers c
	LEFT JOIN orders o ON c.id = o.customer_id
	GROUP BY c.name`, nil)

	assert.Equal(t, []string{"customers", "orders"}, lineage.Sources)
	assert.Equal(t, []SourceColumn{{"orders", "amount"}},
		findColumn(t, lineage.Columns, "total_orders").Sources)
}

func TestExtractLineage_MultipleJoins(t *testing.T) {
	lineage := extract(t, `
	SELECT
		c.name AS customer_name,
		p.name AS product_name,
		oi.quantity
	FROM customers c
	JOIN orders o ON c.id = o.customer_id
	JOIN order_items oi ON o.id = oi.order_id
	JOIN products p ON oi.product_id = p.id`, nil)

	assert.Equal(t, []string{"customers", "order_items", "orders", "products"}, lineage.Sources)
	assert.Equal(t, []SourceColumn{{"products", "name"}},
		findColumn(t, lineage.Columns, "product_name").Sources)
}

func TestExtractLineage_AmbiguousUnqualifiedColumn(t *testing.T) {
	lineage := extract(t, `SELECT name FROM users u JOIN orders o ON u.id = o.user_id`, nil)

	assert.Equal(t, []SourceColumn{{Column: "name"}}, lineage.Columns[0].Sources)
}

// ---------- Set Operation Tests ----------

func TestExtractLineage_SetOperations(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		sources []string
	}{
		{"union", `SELECT id, name FROM customers UNION SELECT id, name FROM suppliers`, []string{"customers", "suppliers"}},
		{"union all", `SELECT id, email FROM users UNION ALL SELECT id, email FROM archived_users`, []string{"archived_users", "users"}},
		{"except", `SELECT id FROM all_users EXCEPT SELECT id FROM blocked_users`, []string{"all_users", "blocked_users"}},
		{"intersect", `SELECT id FROM a INTERSECT SELECT id FROM b`, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lineage := extract(t, tt.sql, nil)
			assert.Equal(t, tt.sources, lineage.Sources)

			id := findColumn(t, lineage.Columns, "id")
			assert.Equal(t, TransformExpression, id.Transform)
			assert.Len(t, id.Sources, 2)
		})
	}
}

// ---------- Star Expansion Tests ----------

func TestExtractLineage_StarWithoutSchema(t *testing.T) {
	lineage := extract(t, `SELECT * FROM users`, nil)

	require.Len(t, lineage.Columns, 1)
	assert.Equal(t, "*", lineage.Columns[0].Name)
	assert.Equal(t, []string{"users"}, lineage.Sources)
}

func TestExtractLineage_StarWithSchema(t *testing.T) {
	schema := Schema{
		"users": {"id", "name", "email", "created_at"},
	}
	lineage := extract(t, `SELECT * FROM users`, schema)

	require.Len(t, lineage.Columns, 4)
	for i, name := range []string{"id", "name", "email", "created_at"} {
		assert.Equal(t, name, lineage.Columns[i].Name)
		assert.Equal(t, []SourceColumn{{"users", name}}, lineage.Columns[i].Sources)
	}
}

func TestExtractLineage_TableStarWithSchema(t *testing.T) {
	schema := Schema{
		"users":  {"id", "name"},
		"orders": {"id", "user_id", "amount"},
	}
	lineage := extract(t, `SELECT u.*, o.amount FROM users u JOIN orders o ON u.id = o.user_id`, schema)

	require.Len(t, lineage.Columns, 3)
	assert.Equal(t, "id", lineage.Columns[0].Name)
	assert.Equal(t, "name", lineage.Columns[1].Name)
	assert.Equal(t, "amount", lineage.Columns[2].Name)
}

func TestExtractLineage_TableStarWithoutSchema(t *testing.T) {
	lineage := extract(t, `SELECT u.* FROM users u`, nil)

	require.Len(t, lineage.Columns, 1)
	assert.Equal(t, "u.*", lineage.Columns[0].Name)
}

func TestExtractLineage_StarFromCTE(t *testing.T) {
	lineage := extract(t, `WITH s AS (SELECT id, UPPER(name) AS name FROM users) SELECT * FROM s`, nil)

	require.Len(t, lineage.Columns, 2)
	assert.Equal(t, "name", lineage.Columns[1].Name)
	assert.Equal(t, []SourceColumn{{"users", "name"}}, lineage.Columns[1].Sources)
}

func TestExtractLineage_UnqualifiedColumnUsesSchema(t *testing.T) {
	schema := Schema{
		"users":  {"id", "name"},
		"orders": {"order_id", "amount"},
	}
	lineage := extract(t, `SELECT name, amount FROM users JOIN orders ON users.id = orders.order_id`, schema)

	assert.Equal(t, []SourceColumn{{"users", "name"}}, findColumn(t, lineage.Columns, "name").Sources)
	assert.Equal(t, []SourceColumn{{"orders", "amount"}}, findColumn(t, lineage.Columns, "amount").Sources)
}

// ---------- Derived Table Tests ----------

func TestExtractLineage_DerivedTable(t *testing.T) {
	lineage := extract(t, `
	SELECT sub.id, sub.total
	FROM (
		SELECT customer_id AS id, SUM(amount) AS total
		FROM orders
		GROUP BY customer_id
	) sub`, nil)

	assert.Equal(t, []string{"orders"}, lineage.Sources)
	assert.Equal(t, []SourceColumn{{"orders", "customer_id"}}, findColumn(t, lineage.Columns, "id").Sources)
	assert.Equal(t, "sum", findColumn(t, lineage.Columns, "total").Function)
}

func TestExtractLineage_NestedDerivedTables(t *testing.T) {
	lineage := extract(t, `
	SELECT final.name, final.order_count
	FROM (
		SELECT u.name, counts.order_count
		FROM users u
		JOIN (
			SELECT user_id, COUNT(*) AS order_count
			FROM orders
			GROUP BY user_id
		) counts ON u.id = counts.user_id
	) final`, nil)

	assert.Equal(t, []string{"orders", "users"}, lineage.Sources)
	assert.Equal(t, "count", findColumn(t, lineage.Columns, "order_count").Function)
}

func TestExtractLineage_ScalarSubquery(t *testing.T) {
	lineage := extract(t, `SELECT id, (SELECT MAX(amount) FROM orders) AS max_amount FROM users`, nil)

	assert.Equal(t, []string{"orders", "users"}, lineage.Sources)
	top := findColumn(t, lineage.Columns, "max_amount")
	assert.Equal(t, TransformExpression, top.Transform)
	assert.Equal(t, []SourceColumn{{"orders", "amount"}}, top.Sources)
}

// ---------- Qualified Table Tests ----------

func TestExtractLineage_QualifiedTables(t *testing.T) {
	tests := []struct {
		sql    string
		source string
	}{
		{`SELECT id, name FROM public.users`, "public.users"},
		{`SELECT id FROM mydb.myschema.users`, "mydb.myschema.users"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			lineage := extract(t, tt.sql, nil)
			assert.Equal(t, []string{tt.source}, lineage.Sources)
			assert.Equal(t, tt.source, lineage.Columns[0].Sources[0].Table)
		})
	}
}

// ---------- Complex Query Tests ----------

func TestExtractLineage_ComplexQuery(t *testing.T) {
	lineage := extract(t, `
	WITH monthly_sales AS (
		SELECT
			DATE_TRUNC('month', o.created_at) AS month,
			p.category_id,
			SUM(oi.quantity * oi.unit_price) AS revenue
		FROM orders o
		JOIN order_items oi ON o.id = oi.order_id
		JOIN products p ON oi.product_id = p.id
		WHERE o.status = 'completed'
		GROUP BY DATE_TRUNC('month', o.created_at), p.category_id
	),
	category_totals AS (
		SELECT
			c.name AS category_name,
			ms.month,
			ms.revenue,
			SUM(ms.revenue) OVER (PARTITION BY c.id ORDER BY ms.month) AS cumulative_revenue
		FROM monthly_sales ms
		JOIN categories c ON ms.category_id = c.id
	)
	SELECT
		category_name,
		month,
		revenue,
		cumulative_revenue,
		ROUND(revenue / NULLIF(LAG(revenue) OVER (PARTITION BY category_name ORDER BY month), 0) * 100 - 100, 2) AS growth_pct
	FROM category_totals
	ORDER BY category_name, month`, nil)

	assert.Equal(t, []string{"categories", "order_items", "orders", "products"}, lineage.Sources)
	require.Len(t, lineage.Columns, 5)

	revenue := findColumn(t, lineage.Columns, "revenue")
	assert.Equal(t, "sum", revenue.Function)
	assert.ElementsMatch(t, []SourceColumn{
		{"order_items", "quantity"},
		{"order_items", "unit_price"},
	}, revenue.Sources)
}

// ---------- Options Tests ----------

func TestExtractLineageWithOptions_Dialect(t *testing.T) {
	d, err := dialect.GetOrRaise("duckdb")
	require.NoError(t, err)

	lineage, err := ExtractLineageWithOptions(`SELECT "Id" FROM "Users"`, ExtractLineageOptions{Dialect: d})
	require.NoError(t, err)
	assert.Equal(t, []string{"Users"}, lineage.Sources)
	assert.Equal(t, "Id", lineage.Columns[0].Name)
}

func TestFromExpr(t *testing.T) {
	stmt, err := parser.ParseOne(`SELECT a FROM t`, dialect.ANSI)
	require.NoError(t, err)

	lineage, err := FromExpr(stmt, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"t"}, lineage.Sources)

	_, err = FromExpr(nil, nil)
	assert.Error(t, err)
}

// ---------- Error Tests ----------

func TestExtractLineage_Errors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"invalid sql", `SELECT a FROM t )`},
		{"empty sql", ``},
		{"two statements", `SELECT 1; SELECT 2`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractLineage(tt.sql, nil)
			assert.Error(t, err)
		})
	}
}

// ---------- Benchmarks ----------

func BenchmarkExtractLineage_Simple(b *testing.B) {
	sql := `SELECT id, name, email FROM users`
	for i := 0; i < b.N; i++ {
		_, _ = ExtractLineage(sql, nil)
	}
}

func BenchmarkExtractLineage_Complex(b *testing.B) {
	sql := `
	WITH cte AS (
		SELECT id, SUM(amount) AS total FROM orders GROUP BY id
	)
	SELECT u.name, c.total
	FROM users u
	JOIN cte c ON u.id = c.id
	WHERE u.status = 'active'`

	for i := 0; i < b.N; i++ {
		_, _ = ExtractLineage(sql, nil)
	}
}
