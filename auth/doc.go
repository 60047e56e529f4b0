// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth derives survey admin keys, share slugs and respondent hashes.

# Keyring

All values are HMAC-SHA256 of the survey id (or address) under a server
salt, so none of them is stored:

	keys := auth.NewKeyring(cfg.AdminKeySalt, cfg.SurveySlugSalt)
	id, err := auth.NewSurveyID()
	adminKey := keys.AdminKey(id)  // returned once at creation
	slug := keys.ShareSlug(id)     // assigned on publish

# Admin Access

Owner-only endpoints send the key in the X-Admin-Key header:

	if err := keys.Authorize(r, surveyID); err != nil {
		// 401
	}

Authorize returns ErrMissingAdminKey when the header is absent and
ErrInvalidAdminKey when it does not match.

# Respondents

Submitted responses keep only a salted fingerprint of the client address:

	hash := keys.RespondentHash(ip)
*/
package auth
