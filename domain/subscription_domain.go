package domain

var (
	MessageSuccessSubscribe        = "subscribed successfully"
	MessageSuccessUnsubscribe      = "unsubscribed successfully"
	MessageSuccessGetSubscriptions = "success get subscriptions"

	MessageFailedSubscribe        = "failed to subscribe"
	MessageFailedUnsubscribe      = "failed to unsubscribe"
	MessageFailedGetSubscriptions = "failed to get subscriptions"

	ErrSelfSubscription    = newError(ErrValidation, "cannot subscribe to yourself")
	ErrAlreadySubscribed   = newError(ErrConflict, "already subscribed to this author")
	ErrSubscriptionMissing = newError(ErrNotFound, "subscription not found")
)

type (
	// Subscription is an author as seen from the feed of one of their followers.
	Subscription struct {
		User
		Recipes      []RecipeShort `json:"recipes"`
		RecipesCount int64         `json:"recipes_count"`
	}
)
