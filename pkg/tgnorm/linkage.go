package tgnorm

// GeneralTopicID is the forum topic that holds messages without an explicit topic link.
const GeneralTopicID = 1

// ReplyHeader is the raw reply context carried in a record's reply_to field.
type ReplyHeader struct {
	// ReplyToScheduled reports a reply to a scheduled message.
	ReplyToScheduled bool
	// ForumTopic reports that the reply target is a forum topic root or lives in one.
	ForumTopic bool
	// ReplyToMsgID is the replied message id when present.
	ReplyToMsgID *int
	// ReplyToTopID is the thread or topic root id when present.
	ReplyToTopID *int
}

// Linkage is the disambiguated reply, forum topic, and thread placement of a message.
type Linkage struct {
	ReplyToMsgID     *int
	TopicID          *int
	ThreadID         *int
	ReplyToScheduled bool
}

// ResolveLinkage derives reply, topic, and thread ids from raw reply context.
//
// The protocol reuses reply_to_msg_id and reply_to_top_id for different roles
// depending on whether the reply target is a forum topic. Forum chats without
// an explicit topic link land in GeneralTopicID.
func ResolveLinkage(isForum bool, replyTo *ReplyHeader) Linkage {
	if replyTo == nil {
		if isForum {
			return Linkage{TopicID: intPointer(GeneralTopicID)}
		}
		return Linkage{}
	}

	linkage := Linkage{ReplyToScheduled: replyTo.ReplyToScheduled}
	switch {
	case replyTo.ForumTopic && replyTo.ReplyToTopID != nil:
		linkage.TopicID = cloneInt(replyTo.ReplyToTopID)
		linkage.ReplyToMsgID = cloneInt(replyTo.ReplyToMsgID)
	case replyTo.ForumTopic:
		linkage.TopicID = cloneInt(replyTo.ReplyToMsgID)
	default:
		if isForum {
			linkage.TopicID = intPointer(GeneralTopicID)
		}
		linkage.ReplyToMsgID = cloneInt(replyTo.ReplyToMsgID)
		linkage.ThreadID = cloneInt(replyTo.ReplyToTopID)
	}

	return linkage
}

// parseReplyHeader reads the reply_to nested record.
func parseReplyHeader(record Record) (*ReplyHeader, error) {
	fields := newFieldReader(record, "reply_to")

	scheduled, err := fields.requiredBool("reply_to_scheduled")
	if err != nil {
		return nil, err
	}
	forumTopic, err := fields.requiredBool("forum_topic")
	if err != nil {
		return nil, err
	}
	msgID, hasMsgID, err := fields.optionalInt("reply_to_msg_id")
	if err != nil {
		return nil, err
	}
	topID, hasTopID, err := fields.optionalInt("reply_to_top_id")
	if err != nil {
		return nil, err
	}

	header := &ReplyHeader{
		ReplyToScheduled: scheduled,
		ForumTopic:       forumTopic,
	}
	if hasMsgID {
		header.ReplyToMsgID = intPointer(msgID)
	}
	if hasTopID {
		header.ReplyToTopID = intPointer(topID)
	}

	return header, nil
}

func intPointer(value int) *int {
	return &value
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	return intPointer(*value)
}
