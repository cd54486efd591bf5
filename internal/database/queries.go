package database

const (
	// Profile queries
	queryInsertProfile = `
		INSERT OR IGNORE INTO profiles (id, name, email, role) VALUES (?, ?, ?, ?)`

	queryGetProfileById = `
		SELECT id, name, email, role, wallet_address, is_crypto_verified, created_at, updated_at
		FROM profiles
		WHERE id = ?`

	queryGetProfileByEmail = `
		SELECT id, name, email, role, wallet_address, is_crypto_verified, created_at, updated_at
		FROM profiles
		WHERE email = ?`

	queryListProfiles = `
		SELECT id, name, email, role, wallet_address, is_crypto_verified, created_at, updated_at
		FROM profiles
		ORDER BY created_at`

	querySaveWalletAddress = `
		UPDATE profiles
		SET wallet_address = ?, is_crypto_verified = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	// Item queries
	queryInsertItem = `
		INSERT INTO items (
			id, category, condition, seller_quoted_price, seller_quoted_price_eth,
			final_payout, final_payout_eth, repair_cost, repair_cost_eth,
			selling_price, selling_price_eth, status, branch, seller_id
		) VALUES (?, ?, ?, ?, ?, '0', '0', '0', '0', '0', '0', ?, ?, ?)`

	queryGetItem = `
		SELECT id, category, condition, seller_quoted_price, seller_quoted_price_eth,
		       final_payout, final_payout_eth, repair_cost, repair_cost_eth,
		       selling_price, selling_price_eth, status, branch, seller_id,
		       buyer_id, processed_by, created_at, updated_at
		FROM items
		WHERE id = ?`

	queryListItems = `
		SELECT id, category, condition, seller_quoted_price, seller_quoted_price_eth,
		       final_payout, final_payout_eth, repair_cost, repair_cost_eth,
		       selling_price, selling_price_eth, status, branch, seller_id,
		       buyer_id, processed_by, created_at, updated_at
		FROM items
		ORDER BY created_at`

	queryListItemsByStatus = `
		SELECT id, category, condition, seller_quoted_price, seller_quoted_price_eth,
		       final_payout, final_payout_eth, repair_cost, repair_cost_eth,
		       selling_price, selling_price_eth, status, branch, seller_id,
		       buyer_id, processed_by, created_at, updated_at
		FROM items
		WHERE status = ?
		ORDER BY created_at`

	queryListItemsBySeller = `
		SELECT id, category, condition, seller_quoted_price, seller_quoted_price_eth,
		       final_payout, final_payout_eth, repair_cost, repair_cost_eth,
		       selling_price, selling_price_eth, status, branch, seller_id,
		       buyer_id, processed_by, created_at, updated_at
		FROM items
		WHERE seller_id = ?
		ORDER BY created_at`

	// Conditional commit: the WHERE clause on status is the concurrency
	// guard. Zero rows affected means the expected state was displaced.
	queryApplyDecision = `
		UPDATE items
		SET final_payout = ?, final_payout_eth = ?,
		    repair_cost = ?, repair_cost_eth = ?,
		    selling_price = ?, selling_price_eth = ?,
		    status = ?, branch = ?, processed_by = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = 'awaiting_valuation'`

	queryMarkSold = `
		UPDATE items
		SET status = 'sold', buyer_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = 'ready_to_sell'`

	// Media queries
	queryInsertMedia = `
		INSERT INTO item_media (id, item_id, path) VALUES (?, ?, ?)`

	queryGetItemMedia = `
		SELECT path FROM item_media WHERE item_id = ? ORDER BY created_at`

	// Settlement ledger queries (append-only; no UPDATE or DELETE exists)
	queryCheckDuplicateSettlement = `
		SELECT id FROM crypto_transactions WHERE transaction_hash = ? LIMIT 1`

	queryInsertSettlement = `
		INSERT INTO crypto_transactions (
			id, item_id, transaction_type, from_address, to_address,
			amount_rs, amount_eth, exchange_rate, transaction_hash, status, confirmed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	queryGetSettlement = `
		SELECT id, item_id, transaction_type, from_address, to_address,
		       amount_rs, amount_eth, exchange_rate, transaction_hash, status,
		       created_at, confirmed_at
		FROM crypto_transactions
		WHERE id = ?`

	queryListSettlements = `
		SELECT id, item_id, transaction_type, from_address, to_address,
		       amount_rs, amount_eth, exchange_rate, transaction_hash, status,
		       created_at, confirmed_at
		FROM crypto_transactions
		ORDER BY id`

	queryListSettlementsByItem = `
		SELECT id, item_id, transaction_type, from_address, to_address,
		       amount_rs, amount_eth, exchange_rate, transaction_hash, status,
		       created_at, confirmed_at
		FROM crypto_transactions
		WHERE item_id = ?
		ORDER BY id`

	// System config queries
	queryGetConfigValue = `
		SELECT config_value FROM system_config WHERE config_key = ?`

	querySetConfigValue = `
		INSERT INTO system_config (config_key, config_value) VALUES (?, ?)
		ON CONFLICT(config_key) DO UPDATE SET config_value = excluded.config_value`
)
