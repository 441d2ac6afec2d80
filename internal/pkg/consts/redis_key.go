package consts

const (
	TokenRevokedKey = "auth:revoked:"
	MediaOrphanKey  = "media:orphan"
)
