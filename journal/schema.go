package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	direction TEXT NOT NULL,
	amount REAL NOT NULL,
	entry_price REAL NOT NULL,
	close_price REAL NOT NULL,
	entry_time DATETIME NOT NULL,
	close_time DATETIME NOT NULL,
	profit_amount REAL NOT NULL,
	pnl_pips REAL NOT NULL,
	reason TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS equity (
	time DATETIME NOT NULL,
	tick INTEGER NOT NULL,
	balance REAL NOT NULL,
	equity REAL NOT NULL,
	price REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_equity_tick ON equity(tick);
`
