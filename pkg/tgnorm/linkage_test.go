package tgnorm

import "testing"

func TestResolveLinkage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		isForum       bool
		replyTo       *ReplyHeader
		wantTopic     *int
		wantReplyTo   *int
		wantThread    *int
		wantScheduled bool
	}{
		{
			name:    "forum topic reply with top id",
			isForum: true,
			replyTo: &ReplyHeader{
				ForumTopic:   true,
				ReplyToTopID: intPointer(5),
				ReplyToMsgID: intPointer(9),
			},
			wantTopic:   intPointer(5),
			wantReplyTo: intPointer(9),
		},
		{
			name:    "forum topic reply with top id outside forum flag",
			isForum: false,
			replyTo: &ReplyHeader{
				ReplyToScheduled: true,
				ForumTopic:       true,
				ReplyToTopID:     intPointer(5),
				ReplyToMsgID:     intPointer(9),
			},
			wantTopic:     intPointer(5),
			wantReplyTo:   intPointer(9),
			wantScheduled: true,
		},
		{
			name:    "forum topic root message",
			isForum: true,
			replyTo: &ReplyHeader{
				ForumTopic:   true,
				ReplyToMsgID: intPointer(9),
			},
			wantTopic: intPointer(9),
		},
		{
			name:    "forum topic root without reply id",
			isForum: true,
			replyTo: &ReplyHeader{
				ReplyToScheduled: true,
				ForumTopic:       true,
			},
			wantScheduled: true,
		},
		{
			name:    "plain reply in forum lands in general topic",
			isForum: true,
			replyTo: &ReplyHeader{
				ReplyToMsgID: intPointer(9),
				ReplyToTopID: intPointer(3),
			},
			wantTopic:   intPointer(GeneralTopicID),
			wantReplyTo: intPointer(9),
			wantThread:  intPointer(3),
		},
		{
			name:    "plain reply in forum without thread",
			isForum: true,
			replyTo: &ReplyHeader{
				ReplyToMsgID: intPointer(9),
			},
			wantTopic:   intPointer(GeneralTopicID),
			wantReplyTo: intPointer(9),
		},
		{
			name:    "plain reply with thread outside forum",
			isForum: false,
			replyTo: &ReplyHeader{
				ReplyToScheduled: true,
				ReplyToMsgID:     intPointer(9),
				ReplyToTopID:     intPointer(3),
			},
			wantReplyTo:   intPointer(9),
			wantThread:    intPointer(3),
			wantScheduled: true,
		},
		{
			name:    "plain reply outside forum",
			isForum: false,
			replyTo: &ReplyHeader{
				ReplyToMsgID: intPointer(9),
			},
			wantReplyTo: intPointer(9),
		},
		{
			name:      "no reply in forum",
			isForum:   true,
			wantTopic: intPointer(GeneralTopicID),
		},
		{
			name:    "no reply outside forum",
			isForum: false,
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := ResolveLinkage(testCase.isForum, testCase.replyTo)
			assertIntPointer(t, "topic id", got.TopicID, testCase.wantTopic)
			assertIntPointer(t, "reply to msg id", got.ReplyToMsgID, testCase.wantReplyTo)
			assertIntPointer(t, "thread id", got.ThreadID, testCase.wantThread)
			if got.ReplyToScheduled != testCase.wantScheduled {
				t.Fatalf("reply to scheduled = %v, want %v", got.ReplyToScheduled, testCase.wantScheduled)
			}
		})
	}
}

func TestResolveLinkageDoesNotAliasInput(t *testing.T) {
	t.Parallel()

	replyTo := &ReplyHeader{ReplyToMsgID: intPointer(9), ReplyToTopID: intPointer(3)}
	got := ResolveLinkage(false, replyTo)
	*replyTo.ReplyToMsgID = 100
	*replyTo.ReplyToTopID = 200

	assertIntPointer(t, "reply to msg id", got.ReplyToMsgID, intPointer(9))
	assertIntPointer(t, "thread id", got.ThreadID, intPointer(3))
}

func assertIntPointer(t *testing.T, label string, got *int, want *int) {
	t.Helper()

	switch {
	case got == nil && want == nil:
	case got == nil:
		t.Fatalf("%s = <nil>, want %d", label, *want)
	case want == nil:
		t.Fatalf("%s = %d, want <nil>", label, *got)
	case *got != *want:
		t.Fatalf("%s = %d, want %d", label, *got, *want)
	}
}
