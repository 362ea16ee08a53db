// Package password turns plaintext secrets into self-describing Argon2id
// digests and checks secrets against them.
//
// Digests use the PHC string format
//
//	$argon2id$v=19$m=<KiB>,t=<passes>,p=<lanes>$<salt>$<hash>
//
// with unpadded standard base64 for salt and hash. Every digest carries its
// own parameters and a fresh 128-bit salt, so the cost can be raised later
// without invalidating stored digests.
package password
