package models

// Hub names the logical endpoint an event is addressed through.
type Hub string

const (
	HubGroup       Hub = "group"
	HubInvitation  Hub = "invitation"
	HubApplication Hub = "application"
	HubMessenger   Hub = "messenger"
)

// Push event targets. Clients match on these literals, misspellings included.
const (
	TargetReceiveGroupResultType          = "ReceiveGroupResultType"
	TargetReceiveSimpleGroup              = "ReceiveSimpleGroup"
	TargetSendGroupImage                  = "SendGroupImage"
	TargetReceiveGroupData                = "ReceiveGroupData"
	TargetReceiveInvitation               = "ReceiveInvitation"
	TargetReceiveRemovedGroup             = "ReceiveRomevedGroup"
	TargetReduceMyInvitations             = "ReduceMyInvitations"
	TargetReduceMyApplicationsCount       = "ReduceMyApplicationsCount"
	TargetReceiveLeftGroupUserID          = "ReceiveLeftGroupUserId"
	TargetReceiveNoMySearchedGroups       = "ReceiveNoMySearchedGroups"
	TargetReceiveCheckGroupNamePartResult = "ReceiveCheckGroupNamePartResult"
	TargetReceiveMessage                  = "ReceiveMessage"
	TargetReceiveEditedMessage            = "ReceiveEditedMessage"
)

type GroupResultType string

const (
	GroupResultSuccessAdded GroupResultType = "successAdded"
	GroupResultSuccessLeft  GroupResultType = "successLeft"
)

const GroupRemovedText = "Group was deleted"

// Event is a typed push to a client. Arguments are encoded positionally.
type Event struct {
	Target    string
	Arguments []interface{}
}

func NewEvent(target string, args ...interface{}) Event {
	if args == nil {
		args = []interface{}{}
	}
	return Event{
		Target:    target,
		Arguments: args,
	}
}
