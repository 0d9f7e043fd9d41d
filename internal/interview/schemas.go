package interview

const questionsSchema = `{
  "type": ["object", "array"],
  "properties": {
    "questions": {
      "type": "array",
      "items": {"$ref": "#/definitions/question"}
    }
  },
  "items": {"$ref": "#/definitions/question"},
  "definitions": {
    "question": {
      "type": "object",
      "properties": {
        "text": {"type": ["string", "null"]},
        "difficulty": {"type": ["string", "null"]},
        "topic": {"type": ["string", "null"]}
      }
    }
  }
}`

const evaluationSchema = `{
  "type": "object",
  "required": ["score"],
  "properties": {
    "score": {"type": ["number", "string"]},
    "feedback": {"type": ["string", "null"]},
    "is_correct": {"type": ["boolean", "string", "number", "null"]}
  }
}`
