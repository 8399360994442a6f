package scene

// Group is a collision-interaction bitmask label.
type Group uint32

const (
	// GroupEnvironment holds static scenery: the ground and anything else
	// the robot stands on.
	GroupEnvironment Group = 1 << iota
	// GroupRobotBody holds the robot's own links.
	GroupRobotBody
	// GroupFreeObject holds loose dynamic bodies such as the ball.
	GroupFreeObject
)

// GroupAll matches every group.
const GroupAll = GroupEnvironment | GroupRobotBody | GroupFreeObject

// CollisionGroups pairs the groups a body belongs to with the groups it may
// collide with. Two bodies interact only if each one's membership intersects
// the other's filter.
type CollisionGroups struct {
	Membership Group
	Filter     Group
}

// RobotBodyGroups collide with the environment and free objects but not with
// other robot links, so adjacent links do not fight their own joints.
func RobotBodyGroups() CollisionGroups {
	return CollisionGroups{
		Membership: GroupRobotBody,
		Filter:     GroupEnvironment | GroupFreeObject,
	}
}

// EnvironmentGroups collide with everything.
func EnvironmentGroups() CollisionGroups {
	return CollisionGroups{Membership: GroupEnvironment, Filter: GroupAll}
}

// FreeObjectGroups collide with everything.
func FreeObjectGroups() CollisionGroups {
	return CollisionGroups{Membership: GroupFreeObject, Filter: GroupAll}
}

// Interacts reports whether bodies carrying g and other may collide.
func (g CollisionGroups) Interacts(other CollisionGroups) bool {
	return g.Membership&other.Filter != 0 && other.Membership&g.Filter != 0
}
