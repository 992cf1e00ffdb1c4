package permission

// Resources of the descriptor catalog. Builders reference these constants so
// a misspelled resource fails to compile.
const (
	ResourceAdmin             Resource = "admin"
	ResourceUser              Resource = "user"
	ResourceRole              Resource = "role"
	ResourceCurrency          Resource = "finance.currency"
	ResourceBinaryDuration    Resource = "finance.binary.duration"
	ResourceMarket            Resource = "ecosystem.market"
	ResourceLedger            Resource = "ecosystem.ledger"
	ResourceTemplate          Resource = "system.notification.template"
	ResourceAuditLog          Resource = "system.log"
	ResourceWishlist          Resource = "ext.ecommerce.wishlist"
	ResourceProduct           Resource = "ext.ecommerce.product"
	ResourceForexSignal       Resource = "ext.forex.signal"
	ResourceP2POffer          Resource = "ext.p2p.offer"
	ResourceICOOffer          Resource = "ext.ico.offer"
	ResourceCopyTradingLeader Resource = "ext.copy_trading.leader"
	ResourceReferral          Resource = "ext.affiliate.referral"
)
