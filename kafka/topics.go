package kafka

// TopicPostEvents 는 포스트 관련 이벤트가 발행되는 토픽이다.
const TopicPostEvents = "post-events"
