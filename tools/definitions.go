package tools

import "github.com/paysponge/spongewallet-go/models"

// ToolName identifies one tool of the catalog.
type ToolName string

const (
	GetBalance            ToolName = "get_balance"
	EVMTransfer           ToolName = "evm_transfer"
	SolanaTransfer        ToolName = "solana_transfer"
	SolanaSwap            ToolName = "solana_swap"
	GetSolanaTokens       ToolName = "get_solana_tokens"
	SearchSolanaTokens    ToolName = "search_solana_tokens"
	GetTransactionStatus  ToolName = "get_transaction_status"
	GetTransactionHistory ToolName = "get_transaction_history"
	RequestFunding        ToolName = "request_funding"
	WithdrawToMainWallet  ToolName = "withdraw_to_main_wallet"
	CreateCryptoOnramp    ToolName = "create_crypto_onramp"
	ClaimSignupBonus      ToolName = "claim_signup_bonus"
	Sponge                ToolName = "sponge"
	CreateX402Payment     ToolName = "create_x402_payment"
	Hyperliquid           ToolName = "hyperliquid"
	StoreKey              ToolName = "store_key"
	GetKeyList            ToolName = "get_key_list"
	GetKeyValue           ToolName = "get_key_value"
	SubmitPlan            ToolName = "submit_plan"
	ApprovePlan           ToolName = "approve_plan"
	ProposeTrade          ToolName = "propose_trade"
)

// ToolDefinition follows the tool format accepted by LLM tool-calling APIs.
type ToolDefinition struct {
	Name        ToolName    `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	InputSchema InputSchema `json:"input_schema" yaml:"input_schema"`
}

var (
	anyChains = []models.Chain{
		models.ChainEthereum, models.ChainBase, models.ChainSepolia, models.ChainBaseSepolia,
		models.ChainTempo, models.ChainSolana, models.ChainSolanaDevnet,
	}
	evmChains    = []models.Chain{models.ChainEthereum, models.ChainBase, models.ChainSepolia, models.ChainBaseSepolia}
	solanaChains = []models.Chain{models.ChainSolana, models.ChainSolanaDevnet}
)

var catalog = []ToolDefinition{
	{
		Name:        GetBalance,
		Description: "Get the balance of your wallet. Returns balances for native tokens and USDC across all supported chains.",
		InputSchema: BuildSchema(map[string]Property{
			"chain":         ChainEnumProperty("Optional: Specific chain to check balance for. If not provided, returns balances for all chains.", anyChains...),
			"allowedChains": ArrayProperty("Optional: Restrict balance results to these chains (e.g., ['base','solana'])", Property{"type": "string"}),
			"onlyUsdc":      BooleanProperty("Optional: Only return USDC balances"),
		}),
	},
	{
		Name:        EVMTransfer,
		Description: "Transfer ETH or USDC on Ethereum, Base, or their testnets. Supports native ETH and USDC transfers.",
		InputSchema: BuildSchema(map[string]Property{
			"chain":    ChainEnumProperty("The chain to transfer on", evmChains...),
			"to":       StringProperty("The recipient address (0x...)"),
			"amount":   StringProperty("The amount to transfer (e.g., '0.1' for 0.1 ETH or '100' for 100 USDC)"),
			"currency": StringEnumProperty("The currency to transfer", "ETH", "USDC"),
		}, "chain", "to", "amount", "currency"),
	},
	{
		Name:        SolanaTransfer,
		Description: "Transfer SOL or USDC on Solana mainnet or devnet. Supports native SOL and USDC transfers.",
		InputSchema: BuildSchema(map[string]Property{
			"chain":    ChainEnumProperty("The Solana network to use", solanaChains...),
			"to":       StringProperty("The recipient address"),
			"amount":   StringProperty("The amount to transfer"),
			"currency": StringEnumProperty("The currency to transfer", "SOL", "USDC"),
		}, "chain", "to", "amount", "currency"),
	},
	{
		Name:        SolanaSwap,
		Description: "Swap tokens on Solana using Jupiter aggregator. Finds the best route and executes the swap.",
		InputSchema: BuildSchema(map[string]Property{
			"chain":       ChainEnumProperty("The Solana network to use", solanaChains...),
			"inputToken":  StringProperty("The token to swap from (symbol like 'SOL', 'USDC', or token address)"),
			"outputToken": StringProperty("The token to swap to (symbol like 'SOL', 'USDC', or token address)"),
			"amount":      StringProperty("The amount of input token to swap"),
			"slippageBps": NumberProperty("Slippage tolerance in basis points (default: 50 = 0.5%)"),
		}, "chain", "inputToken", "outputToken", "amount"),
	},
	{
		Name:        GetSolanaTokens,
		Description: "List all SPL tokens held by the agent's Solana wallet, with balances and metadata.",
		InputSchema: BuildSchema(map[string]Property{
			"chain": ChainEnumProperty("The Solana network to use", solanaChains...),
		}, "chain"),
	},
	{
		Name:        SearchSolanaTokens,
		Description: "Search the Jupiter token list by symbol or name.",
		InputSchema: BuildSchema(map[string]Property{
			"query": StringProperty("Search query (symbol or name)"),
			"limit": NumberProperty("Max results (default 10, max 20)"),
		}, "query"),
	},
	{
		Name:        GetTransactionStatus,
		Description: "Check the status of a transaction by its hash/signature.",
		InputSchema: BuildSchema(map[string]Property{
			"txHash": StringProperty("The transaction hash (EVM) or signature (Solana)"),
			"chain":  ChainEnumProperty("Chain for the transaction", anyChains...),
		}, "txHash", "chain"),
	},
	{
		Name:        GetTransactionHistory,
		Description: "Get recent transaction history for this agent's wallets.",
		InputSchema: BuildSchema(map[string]Property{
			"limit": NumberProperty("Maximum number of transactions to return (default: 50)"),
			"chain": StringProperty("Optional: filter by chain"),
		}),
	},
	{
		Name:        RequestFunding,
		Description: "Request funding from the owner (creates an approval request).",
		InputSchema: BuildSchema(map[string]Property{
			"amount":   StringProperty("Amount to request"),
			"reason":   StringProperty("Reason for the request"),
			"chain":    StringProperty("Chain to request on (default: tempo)"),
			"currency": StringProperty("Currency (pathUSD, USDC, ETH, SOL)"),
		}, "amount"),
	},
	{
		Name:        WithdrawToMainWallet,
		Description: "Withdraw funds back to the owner's main wallet.",
		InputSchema: BuildSchema(map[string]Property{
			"chain":    ChainEnumProperty("Chain to withdraw from", anyChains...),
			"amount":   StringProperty("Amount to withdraw"),
			"currency": StringEnumProperty("Token to withdraw (default: native)", "native", "USDC"),
		}, "chain", "amount"),
	},
	{
		Name:        CreateCryptoOnramp,
		Description: "Create a fiat-to-crypto onramp link to purchase USDC directly into the agent wallet.",
		InputSchema: BuildSchema(map[string]Property{
			"wallet_address":      StringProperty("Agent wallet address for the destination chain"),
			"provider":            StringEnumProperty("Onramp provider selection (default: auto)", "auto", "stripe", "coinbase"),
			"chain":               StringEnumProperty("Destination chain for purchased USDC (default: base)", "base", "solana", "polygon"),
			"fiat_amount":         StringProperty("Optional fiat amount to prefill, e.g. '100'"),
			"fiat_currency":       StringProperty("Optional fiat currency code (default: usd)"),
			"lock_wallet_address": BooleanProperty("For Stripe: lock destination wallet address (default: true)"),
			"redirect_url":        StringProperty("For Coinbase: optional redirect URL after checkout"),
		}, "wallet_address"),
	},
	{
		Name:        ClaimSignupBonus,
		Description: "Claim a one-time signup bonus that sends 1 USDC on Base to the current agent wallet.",
		InputSchema: BuildSchema(nil),
	},
	{
		Name:        Sponge,
		Description: "Call paid APIs via x402 (search, image, predict, crawl, parse, prospect, llm).",
		InputSchema: BuildSchema(map[string]Property{
			"task": StringProperty("Task name (search, image, predict, crawl, parse, prospect, llm)"),
		}, "task"),
	},
	{
		Name:        CreateX402Payment,
		Description: "Create a signed x402 payment payload.",
		InputSchema: BuildSchema(map[string]Property{
			"chain":                StringProperty("Chain to pay on (e.g., base, solana, tempo)"),
			"to":                   StringProperty("Recipient address from 402 response"),
			"token":                StringProperty("Token address or mint (optional)"),
			"amount":               StringProperty("Amount to pay"),
			"decimals":             NumberProperty("Token decimals (optional)"),
			"valid_for_seconds":    NumberProperty("Payment validity window in seconds"),
			"resource_url":         StringProperty("Resource URL for x402 preflight or metadata"),
			"resource_description": StringProperty("Resource description"),
			"fee_payer":            StringProperty("Solana fee payer from 402 response (optional)"),
			"http_method":          StringEnumProperty("HTTP method used for 402 preflight (default: GET)", "GET", "POST"),
		}, "chain", "to", "amount"),
	},
	{
		Name: Hyperliquid,
		Description: "Trade perps and spot on Hyperliquid DEX. Uses your agent's EVM wallet for signing (no API keys needed).\n\n" +
			"ACTIONS:\n" +
			"  Read: status, positions, orders, fills, markets, ticker, orderbook, funding\n" +
			"  Write (requires hyperliquid:trade scope): order, cancel, cancel_all, set_leverage, withdraw, transfer\n\n" +
			"ORDER PARAMETERS (for action=\"order\"):\n" +
			"- symbol: CCXT symbol (e.g., \"BTC/USDC:USDC\" for perps, \"PURR/USDC\" for spot)\n" +
			"- side: \"buy\" or \"sell\"\n" +
			"- type: \"limit\" or \"market\"\n" +
			"- amount: Order size in base currency (e.g., \"0.001\" for BTC)\n" +
			"- price: Limit price (required for limit orders)",
		InputSchema: BuildSchema(map[string]Property{
			"action": StringEnumProperty("Action to perform",
				"status", "order", "cancel", "cancel_all", "set_leverage", "positions", "orders",
				"fills", "markets", "ticker", "orderbook", "funding", "withdraw", "transfer"),
			"symbol":        StringProperty("CCXT symbol (e.g., 'BTC/USDC:USDC' for perps, 'PURR/USDC' for spot)"),
			"side":          StringEnumProperty("Buy or sell (for orders)", "buy", "sell"),
			"type":          StringEnumProperty("Order type", "limit", "market"),
			"amount":        StringProperty("Order size in base currency (e.g., '0.001')"),
			"price":         StringProperty("Limit price (required for limit orders)"),
			"reduce_only":   BooleanProperty("Reduce-only order (default: false)"),
			"trigger_price": StringProperty("Trigger price for stop-loss/take-profit"),
			"tp_sl":         StringEnumProperty("Take-profit or stop-loss (required if trigger_price set)", "tp", "sl"),
			"tif":           StringEnumProperty("Time-in-force: GTC (default), IOC, PO (post-only)", "GTC", "IOC", "PO"),
			"order_id":      StringProperty("Order ID to cancel"),
			"leverage":      NumberProperty("Leverage multiplier (1-100)"),
			"since":         NumberProperty("Start timestamp for fills query (ms)"),
			"limit":         NumberProperty("Max results (fills/orderbook/markets page size)"),
			"offset":        NumberProperty("Pagination offset for markets"),
			"query":         StringProperty("Filter markets by symbol/base/quote substring"),
			"market_type":   StringEnumProperty("Filter markets by type", "spot", "swap"),
			"full":          BooleanProperty("For markets: true returns full market objects (larger payload)"),
			"destination":   StringProperty("Destination wallet address for withdraw"),
			"to_perp":       BooleanProperty("Transfer direction: true = spot to perps, false = perps to spot"),
		}, "action"),
	},
	{
		Name: StoreKey,
		Description: "Store a key for a third-party service (encrypted at rest). " +
			"Use this when the agent receives a new key from a signup or provisioning flow. " +
			"Storing again for the same service updates/replaces the existing key.",
		InputSchema: BuildSchema(map[string]Property{
			"service":  StringProperty("Service name identifier (e.g., 'openai', 'perplexity', 'serpapi')"),
			"key":      StringProperty("The key value to store"),
			"label":    StringProperty("Optional label/note (e.g., 'primary', 'billing account A')"),
			"metadata": ObjectProperty("Optional metadata to store alongside the key"),
		}, "service", "key"),
	},
	{
		Name:        GetKeyList,
		Description: "Retrieve a list of stored keys for this agent. Returns metadata only (no decrypted key values).",
		InputSchema: BuildSchema(nil),
	},
	{
		Name:        GetKeyValue,
		Description: "Retrieve the decrypted key value for one stored service key.",
		InputSchema: BuildSchema(map[string]Property{
			"service": StringProperty("Service name identifier (e.g., 'openai', 'perplexity', 'serpapi')"),
		}, "service"),
	},
	{
		Name: SubmitPlan,
		Description: "Submit a multi-step plan (swaps, transfers, bridges) for user review and approval. " +
			"Steps execute sequentially and automatically after approval. " +
			"Use this whenever you need to do 2+ related actions together (e.g., swap then bridge, rebalance a portfolio).\n\n" +
			"WORKFLOW: After calling submit_plan, present the plan to the user. " +
			"When the user confirms, call approve_plan with the plan_id.",
		InputSchema: BuildSchema(map[string]Property{
			"title":     StringProperty("Short title for the plan (e.g., 'Q1 Portfolio Rebalance')"),
			"reasoning": StringProperty("Your strategy explanation, shown to the user"),
			"steps": ArrayProperty("Ordered list of actions to execute (1-20 steps)", NestedObjectProperty(map[string]Property{
				"type":              StringEnumProperty("Step type", "swap", "transfer", "bridge"),
				"input_token":       StringProperty("Token to sell (for swap steps)"),
				"output_token":      StringProperty("Token to buy (for swap steps)"),
				"amount":            StringProperty("Amount (human-readable)"),
				"reason":            StringProperty("Why this step"),
				"chain":             StringProperty("Chain (for transfer steps)"),
				"to":                StringProperty("Recipient address (for transfer steps)"),
				"currency":          StringProperty("Currency (for transfer steps)"),
				"source_chain":      StringProperty("Source chain (for bridge steps)"),
				"destination_chain": StringProperty("Destination chain (for bridge steps)"),
				"token":             StringProperty("Token to bridge (for bridge steps)"),
				"destination_token": StringProperty("Receive different token on destination (for bridge steps)"),
			}, "type", "amount", "reason")),
		}, "title", "steps"),
	},
	{
		Name: ApprovePlan,
		Description: "Approve and execute a previously submitted plan. " +
			"Use this after submit_plan when the user confirms they want to proceed.",
		InputSchema: BuildSchema(map[string]Property{
			"plan_id": StringProperty("The plan ID returned by submit_plan"),
		}, "plan_id"),
	},
	{
		Name: ProposeTrade,
		Description: "Propose a single token swap for user approval. Fetches a quote and creates a pending trade proposal. " +
			"Use only when the user explicitly asks for a proposal or review-before-execute flow. " +
			"For direct execution, use solana_swap instead. " +
			"For multi-step flows, use submit_plan instead.",
		InputSchema: BuildSchema(map[string]Property{
			"input_token":  StringProperty("Token to sell (symbol like 'USDC' or mint address)"),
			"output_token": StringProperty("Token to buy (symbol like 'SOL' or mint address)"),
			"amount":       StringProperty("Amount of input token to trade (human-readable, e.g., '5000')"),
			"reason":       StringProperty("Your reasoning for this trade, shown to the user"),
		}, "input_token", "output_token", "amount", "reason"),
	},
}

// Definitions returns the catalog in its fixed order. The slice is a copy.
func Definitions() []ToolDefinition {
	return append([]ToolDefinition(nil), catalog...)
}

// Lookup finds a tool definition by name.
func Lookup(name string) (ToolDefinition, bool) {
	for _, def := range catalog {
		if string(def.Name) == name {
			return def, true
		}
	}
	return ToolDefinition{}, false
}
