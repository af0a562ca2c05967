package constants

const (
	CountUsersByRole = `
	SELECT role, COUNT(*) AS count FROM users GROUP BY role
	`

	CountUsersByStatus = `
	SELECT status, COUNT(*) AS count FROM users GROUP BY status
	`

	CountUsersSince = `
	SELECT COUNT(*) FROM users WHERE created_at >= $1
	`

	CountCampaignTotals = `
	SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE status = 'ONGOING') AS ongoing,
		COUNT(*) FILTER (WHERE status = 'COMPLETED') AS completed,
		COALESCE(SUM(current_volunteers), 0) AS volunteers
	FROM campaigns
	`

	CountHelpRequestsByStatus = `
	SELECT status, COUNT(*) AS count FROM help_requests GROUP BY status
	`

	CountRegistrationsSince = `
	SELECT
		COUNT(*) FILTER (WHERE registered_at >= $1) AS in_range,
		COUNT(*) FILTER (WHERE status = 'ATTENDED') AS attended
	FROM campaign_registrations
	`

	TopDistricts = `
	SELECT district,
		SUM(campaigns) AS campaigns,
		SUM(requests) AS requests
	FROM (
		SELECT district, COUNT(*) AS campaigns, 0 AS requests
		FROM campaigns WHERE district <> '' GROUP BY district
		UNION ALL
		SELECT district, 0 AS campaigns, COUNT(*) AS requests
		FROM help_requests WHERE district <> '' GROUP BY district
	) activity
	GROUP BY district
	ORDER BY SUM(campaigns) + SUM(requests) DESC
	LIMIT $1
	`

	CountMessages = `
	SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE created_at >= $1) AS in_range
	FROM messages
	`
)
