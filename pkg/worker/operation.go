package worker

import (
	"fmt"

	"github.com/dialogs/dialog-go-lib/enum"
)

const (
	OpUnknown     Operation = 0
	OpSubscribe   Operation = 1
	OpUnsubscribe Operation = 2
)

type Operation int

var _OperationEnum = enum.New("topic operation").
	Add(OpUnknown, "unknown").
	Add(OpSubscribe, "subscribe").    // https://developers.google.com/instance-id/reference/server#create_a_relation_mapping_for_an_app_instance
	Add(OpUnsubscribe, "unsubscribe") // https://developers.google.com/instance-id/reference/server#manage_relationship_maps_for_multiple_app_instances

func OperationStringKeys() []string {
	return _OperationEnum.StringKeys()
}

func OperationByString(src string) Operation {
	op, ok := _OperationEnum.GetByString(src)
	if !ok {
		return OpUnknown
	}
	return op.(Operation)
}

func (o Operation) String() string {
	val, ok := _OperationEnum.GetByIndex(o)
	if !ok {
		return fmt.Sprintf("invalid topic operation: %d", int(o))
	}

	return val
}
