package domain

// Objects and actions checked by the policy authorizer.
const (
	ObjectProduct      = "product"
	ObjectProvider     = "provider"
	ObjectStock        = "stock"
	ObjectOrder        = "order"
	ObjectUser         = "user"
	ObjectInviteCode   = "invite_code"
	ObjectSettings     = "settings"
	ObjectDashboard    = "dashboard"
	ObjectFulfillment  = "fulfillment"
	ObjectOrderHistory = "order_history"
)

const (
	ActionView    = "view"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionToggle  = "toggle"
	ActionRecord  = "record"
	ActionManage  = "manage"
	ActionAdvance = "advance"
)
