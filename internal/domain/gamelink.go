package domain

// GameLinkConfig is a registered relationship with another game that permits
// direct object transfer. ClassMappings translates source type tags to the
// target game's type tags.
type GameLinkConfig struct {
	TargetGameID       string `json:"target_game_id" validate:"required"`
	TargetGameEndpoint string `json:"target_game_endpoint,omitempty"`

	AllowDirectObjectTransfer bool `json:"allow_direct_object_transfer"`

	ClassMappings map[string]string `json:"class_mappings,omitempty"`
	LinkMetadata  map[string]string `json:"link_metadata,omitempty"`
}

// TransferredObjectData is the serialized form of a game object crossing a
// game link. ObjectData holds only fields the object's codec chose to encode.
type TransferredObjectData struct {
	ObjectID       string            `json:"object_id"`
	SourcePlayerID string            `json:"source_player_id"`
	TargetPlayerID string            `json:"target_player_id"`
	SourceGameID   string            `json:"source_game_id"`
	ObjectClass    string            `json:"object_class"`
	ObjectData     map[string]string `json:"object_data"`
	Valid          bool              `json:"valid"`
}
